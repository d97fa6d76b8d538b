package storage

// Document keys. Values are kept compatible with data written by earlier
// browser builds of the app.
const (
	KeyAuth          = "warrick_auth"
	KeyUsers         = "warrick_app_users"
	KeyBusiness      = "warrick_business"
	KeyInvoices      = "warrick_invoices"
	KeyCustomers     = "warrick_customers"
	KeyProducts      = "warrick_products"
	KeyWallet        = "warrick_wallet_data_v2"
	KeyWalletProfile = "warrick_wallet_profile_v2"
)

// AllKeys returns every document key the application writes.
func AllKeys() []string {
	return []string{
		KeyAuth,
		KeyUsers,
		KeyBusiness,
		KeyInvoices,
		KeyCustomers,
		KeyProducts,
		KeyWallet,
		KeyWalletProfile,
	}
}
