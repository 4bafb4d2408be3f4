package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

var (
	genderLevels = []string{"F", "M"}
	ageLevels    = []string{"0-17", "18-25", "26-35", "36-45", "46-50", "51-55", "55+"}
	cityLevels   = []string{"A", "B", "C"}
	stayLevels   = []string{"0", "1", "2", "3", "4+"}
)

// Synthesize generates a purchase table with the documented schema. The same
// rows/seed pair always yields the same table. Product_Category_2 and
// Product_Category_3 carry injected missingness, mirroring the shape of the
// real data.
func Synthesize(rows int, seed int64) *Frame {
	rng := rand.New(rand.NewSource(seed))

	userID := make([]string, rows)
	productID := make([]string, rows)
	gender := make([]string, rows)
	age := make([]string, rows)
	occupation := make([]float64, rows)
	city := make([]string, rows)
	stay := make([]string, rows)
	marital := make([]float64, rows)
	cat1 := make([]float64, rows)
	cat2 := make([]float64, rows)
	cat3 := make([]float64, rows)
	purchase := make([]float64, rows)

	for i := 0; i < rows; i++ {
		userID[i] = fmt.Sprintf("%07d", 1000001+rng.Intn(5000))
		productID[i] = fmt.Sprintf("P%08d", 42+rng.Intn(3500))
		gender[i] = genderLevels[rng.Intn(len(genderLevels))]
		age[i] = ageLevels[rng.Intn(len(ageLevels))]
		occupation[i] = float64(rng.Intn(21))
		city[i] = cityLevels[rng.Intn(len(cityLevels))]
		stay[i] = stayLevels[rng.Intn(len(stayLevels))]
		marital[i] = float64(rng.Intn(2))
		cat1[i] = float64(1 + rng.Intn(20))
		if rng.Float64() < 0.31 {
			cat2[i] = math.NaN()
		} else {
			cat2[i] = float64(2 + rng.Intn(17))
		}
		if rng.Float64() < 0.69 {
			cat3[i] = math.NaN()
		} else {
			cat3[i] = float64(3 + rng.Intn(16))
		}

		// Amount depends on category and demographics so fitted models have
		// real signal to find; noise keeps R2 well below 1.
		base := 9000.0 - 380.0*cat1[i]
		if !math.IsNaN(cat2[i]) {
			base += 55.0 * cat2[i]
		}
		if gender[i] == "M" {
			base += 420.0
		}
		switch city[i] {
		case "B":
			base += 250.0
		case "C":
			base += 610.0
		}
		base += 120.0 * float64(indexOf(ageLevels, age[i]))
		base += rng.NormFloat64() * 1700.0
		if base < 185 {
			base = 185
		}
		purchase[i] = math.Round(base)
	}

	f := NewFrame()
	must(f.AddCategorical(ColUserID, userID))
	must(f.AddCategorical(ColProductID, productID))
	must(f.AddCategorical(ColGender, gender))
	must(f.AddCategorical(ColAge, age))
	must(f.AddNumeric(ColOccupation, occupation))
	must(f.AddCategorical(ColCityCategory, city))
	must(f.AddCategorical(ColStayYears, stay))
	must(f.AddNumeric(ColMaritalStatus, marital))
	must(f.AddNumeric(ColProductCategory1, cat1))
	must(f.AddNumeric(ColProductCategory2, cat2))
	must(f.AddNumeric(ColProductCategory3, cat3))
	must(f.AddNumeric(ColPurchase, purchase))
	return f
}

func indexOf(levels []string, v string) int {
	for i, l := range levels {
		if l == v {
			return i
		}
	}
	return 0
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
