package model

// User is an applicant; shift_user records which shifts they applied to.
type User struct {
	Base
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
