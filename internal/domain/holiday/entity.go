package holiday

type Holiday struct {
	Date string // YYYY-MM-DD
	Name string
}
