// Package domain holds what every layer of the todos service shares: the
// error kinds that decide HTTP statuses and the InputError raised for bad
// create requests. The todo entity itself lives in domain/todo.
package domain
