package maqsad

import "maqsad/pkg/db"

type User struct {
	db.User
}

func NewUser(in *db.User) *User {
	if in == nil {
		return nil
	}

	return &User{
		User: *in,
	}
}

type Transaction struct {
	db.Transaction
}

func NewTransaction(in *db.Transaction) *Transaction {
	if in == nil {
		return nil
	}

	return &Transaction{
		Transaction: *in,
	}
}

func NewTransactions(in []db.Transaction) []Transaction {
	return MapP(in, NewTransaction)
}

// MapP converts slice of type T to slice of type M with given converter with pointers.
func MapP[T, M any](a []T, f func(*T) *M) []M {
	n := make([]M, len(a))
	for i := range a {
		n[i] = *f(&a[i])
	}
	return n
}
