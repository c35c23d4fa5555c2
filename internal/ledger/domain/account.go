package domain

// Account is a money container transactions belong to. AutoMirrorTransfers
// marks accounts with no independent bank feed: transfers into them get a
// synthesized mirror transaction instead of waiting for an imported
// counterpart.
type Account struct {
	ID                  string
	Name                string
	AutoMirrorTransfers bool
}

type AccountRepository interface {
	Save(account Account) error
	FindByID(accountID string) (*Account, error)
	ExistsByID(accountID string) (bool, error)
}
