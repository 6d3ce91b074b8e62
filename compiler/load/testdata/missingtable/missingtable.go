package missingtable

//selectable:record
type Order struct {
	ID int
}
