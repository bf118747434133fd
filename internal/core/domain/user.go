package domain

type User struct {
	ID        uint64
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}
