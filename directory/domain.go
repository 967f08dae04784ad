package directory

// MaxFieldLen bounds every textual attribute of a User, matching the
// VARCHAR(200) columns of oleander.users.
const MaxFieldLen = 200

// User is one row of the oleander.users directory. The id is assigned by
// the database at creation time and never changes or gets reused. Pwd is an
// opaque credential value; the directory neither hashes nor inspects it.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Pwd       string
}

// CreateParams carries the four required attributes of a new user.
type CreateParams struct {
	FirstName string `validate:"required,max=200"`
	LastName  string `validate:"required,max=200"`
	Username  string `validate:"required,max=200"`
	Pwd       string `validate:"required,max=200"`
}

// UpdateParams overwrites the fields that are set; nil fields keep their
// stored value. At least one field must be set.
type UpdateParams struct {
	FirstName *string `validate:"omitnil,required,max=200"`
	LastName  *string `validate:"omitnil,required,max=200"`
	Username  *string `validate:"omitnil,required,max=200"`
	Pwd       *string `validate:"omitnil,required,max=200"`
}

// IsEmpty reports whether no field is set.
func (p UpdateParams) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Username == nil && p.Pwd == nil
}
