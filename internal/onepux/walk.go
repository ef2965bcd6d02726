package onepux

// WalkedItem is one item annotated with the account and vault it came from.
type WalkedItem struct {
	Item    *Item
	Account string
	Vault   string
}

// Walk flattens an export into its items in document order: accounts in
// order, vaults in order within each account, items in order within each
// vault. This ordering fixes the CSV row order and duplicate-title
// numbering, so it must not be disturbed.
func Walk(export *Export) []WalkedItem {
	var walked []WalkedItem
	for ai := range export.Accounts {
		account := &export.Accounts[ai]
		accountName := account.Attrs.AccountName
		if accountName == "" {
			accountName = account.Attrs.Name
		}
		if accountName == "" {
			accountName = "Unknown"
		}
		for vi := range account.Vaults {
			vault := &account.Vaults[vi]
			vaultName := vault.Attrs.Name
			if vaultName == "" {
				vaultName = "Unknown"
			}
			for ii := range vault.Items {
				walked = append(walked, WalkedItem{
					Item:    &vault.Items[ii],
					Account: accountName,
					Vault:   vaultName,
				})
			}
		}
	}
	return walked
}
