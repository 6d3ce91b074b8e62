package badcolumn

//selectable:record table=files
type File struct {
	ID   int
	Name string `db:"file name"`
}
