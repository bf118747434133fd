package domain

type Country struct {
	ID   uint64
	Name string
}

type Address struct {
	ID           uint64
	UserID       uint64
	FirstName    string
	LastName     string
	Phone        string
	CountryID    uint64
	City         string
	AddressLine1 string
	AddressLine2 string
	AddressType  string
}
