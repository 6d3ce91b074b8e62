package nofields

//selectable:record table=audit
type Audit struct {
	hidden string
	Skip   string `db:"-"`
}
