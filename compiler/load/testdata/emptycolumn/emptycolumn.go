package emptycolumn

//selectable:record table=notes
type Note struct {
	ID   int
	Body string `db:""`
}
