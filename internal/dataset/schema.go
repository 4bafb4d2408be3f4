package dataset

// Column names of the purchase dataset. The order is the canonical CSV
// header order.
const (
	ColUserID           = "User_ID"
	ColProductID        = "Product_ID"
	ColGender           = "Gender"
	ColAge              = "Age"
	ColOccupation       = "Occupation"
	ColCityCategory     = "City_Category"
	ColStayYears        = "Stay_In_Current_City_Years"
	ColMaritalStatus    = "Marital_Status"
	ColProductCategory1 = "Product_Category_1"
	ColProductCategory2 = "Product_Category_2"
	ColProductCategory3 = "Product_Category_3"
	ColPurchase         = "Purchase"
)

// Schema lists the twelve columns every loaded or synthesized table carries.
var Schema = []string{
	ColUserID,
	ColProductID,
	ColGender,
	ColAge,
	ColOccupation,
	ColCityCategory,
	ColStayYears,
	ColMaritalStatus,
	ColProductCategory1,
	ColProductCategory2,
	ColProductCategory3,
	ColPurchase,
}

// IdentifierColumns carry no predictive signal and are dropped before
// encoding.
var IdentifierColumns = []string{ColUserID, ColProductID}

// CategoricalColumns are dummy-encoded with the baseline level dropped.
var CategoricalColumns = []string{ColGender, ColAge, ColCityCategory, ColStayYears}

// ImputedColumns may contain missing entries in the raw data and are filled
// with zero during preparation.
var ImputedColumns = []string{ColProductCategory2, ColProductCategory3}

// kindOf reports how a schema column is stored.
func kindOf(name string) Kind {
	switch name {
	case ColUserID, ColProductID, ColGender, ColAge, ColCityCategory, ColStayYears:
		return Categorical
	default:
		return Numeric
	}
}
