package gekkoedit

import (
	"reflect"
)

// Component columns are typed slices ([]T) stored as any and accessed through reflection.

func makeColumn(elem reflect.Type) any {
	return reflect.MakeSlice(reflect.SliceOf(elem), 0, 4).Interface()
}

// columnAt returns the addressable element idx of column.
func columnAt(column any, idx int) reflect.Value {
	return reflect.ValueOf(column).Index(idx)
}

func setColumnAt(column any, idx int, val reflect.Value) {
	columnAt(column, idx).Set(val)
}

func clearColumnAt(column any, idx int) {
	v := columnAt(column, idx)
	v.SetZero()
}

// growColumn appends one zero element and returns the possibly reallocated column.
func growColumn(column any) any {
	v := reflect.ValueOf(column)
	return reflect.Append(v, reflect.Zero(v.Type().Elem())).Interface()
}

func columnLen(column any) int {
	return reflect.ValueOf(column).Len()
}
