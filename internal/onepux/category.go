package onepux

// Category ids with routing significance.
const (
	// CategoryLogin is the only category exported to the passwords CSV.
	CategoryLogin = "001"
	// CategoryGeneratedPassword holds throwaway generated passwords. These
	// are skipped entirely: the user never set them consciously, so they
	// belong in neither output.
	CategoryGeneratedPassword = "005"
	// CategoryDocument items carry a document-level attachment.
	CategoryDocument = "006"
	// CategorySSHKey items carry an SSH private key.
	CategorySSHKey = "114"
)

// categoryNames maps the fixed 3-digit category ids to display names.
var categoryNames = map[string]string{
	"001": "Login",
	"002": "Credit Card",
	"003": "Secure Note",
	"004": "Identity",
	"005": "Password",
	"006": "Document",
	"100": "Software License",
	"101": "Bank Account",
	"103": "Driver License",
	"105": "Membership",
	"106": "Passport",
	"107": "Reward Program",
	"108": "Social Security Number",
	"109": "Wireless Router",
	"110": "Server",
	"112": "API Credential",
	"114": "SSH Key",
}

// Classify maps a category id to its display name. Unmapped ids get a
// synthesized "Category_<id>" name so unknown records still export.
func Classify(categoryID string) string {
	if name, ok := categoryNames[categoryID]; ok {
		return name
	}
	return "Category_" + categoryID
}

// IsLogin reports whether items of this category go to the passwords CSV.
// Note that Server items (110) have credential-like fields but still route
// to the text export.
func IsLogin(categoryID string) bool {
	return categoryID == CategoryLogin
}

// IsGeneratedPassword reports whether items of this category are dropped
// from both outputs.
func IsGeneratedPassword(categoryID string) bool {
	return categoryID == CategoryGeneratedPassword
}
