package querybuilder

// InsertRows holds the value tuples of a multi-row INSERT.
type InsertRows [][]interface{}

// UpdateData maps column names to their new values.
type UpdateData map[string]interface{}
