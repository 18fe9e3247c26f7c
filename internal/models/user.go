package models

type User struct {
	ID                    int64   `json:"id" db:"id"`
	Username              string  `json:"username" db:"username"`
	FullName              *string `json:"fullName" db:"full_name"`
	IsAdmin               bool    `json:"isAdmin" db:"is_admin"`
	CreationEnvironmentID *int64  `json:"creationEnvironmentId" db:"creation_environment_id"`
}

// LoginResult is the row returned by sp_login_user for valid credentials
type LoginResult struct {
	UserID          int64  `db:"user_id"`
	Username        string `db:"username"`
	EnvironmentID   int64  `db:"environment_id"`
	EnvironmentName string `db:"environment_name"`
}

// UserInput is the body of user create and update
type UserInput struct {
	Username              string  `json:"username"`
	FullName              *string `json:"fullName"`
	Password              *string `json:"password"`
	IsAdmin               bool    `json:"isAdmin"`
	CreationEnvironmentID *int64  `json:"creationEnvironmentId"`
	EnvironmentIDs        []int64 `json:"environmentIds"`
}
