package badtype

//selectable:record table=signals
type Signal struct {
	ID    int
	Value complex128
}
