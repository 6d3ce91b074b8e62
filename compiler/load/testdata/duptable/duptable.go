package duptable

//selectable:record table=orders table=purchases
type Order struct {
	ID int
}
