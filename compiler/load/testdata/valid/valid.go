package valid

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a user.
type Role string

// User is a row of the users table.
//
//selectable:record table=users
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string `db:"email_address"`
	Role      Role
	Age       *int
	Bio       []byte
	Meta      map[string]any
	CreatedAt time.Time `db:"created_at"`
	password  string
	Internal  string `db:"-"`
}

//selectable:record table=groups
type Group struct {
	ID   int64
	Name string
}

// Plain carries no directive and must be ignored by the loader.
type Plain struct {
	X int
}
