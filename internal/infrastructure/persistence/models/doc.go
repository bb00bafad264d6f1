// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model carries a FromDomain
// constructor and a ToDomain mapper used by the repositories.
//
// - base.go: shared identity and version columns
// - partner.go: customers and their credit limit rows
// - ledger.go: receivable ledger postings read by the balance lookup
// - trade.go: sales documents and purchase receipts with their lines
package models
