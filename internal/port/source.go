package port

// Record is one row of a batch file, exposing fields by column name.
// A missing field reads as the empty string, never an error.
type Record interface {
	Get(field string) string
}
