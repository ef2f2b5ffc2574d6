// Package goldbook provides the bookkeeping model of a gold trading shop. It is
// designed to be local-first: every record lives in a small key-value store
// owned by the shop, and nothing depends on a remote service to keep working.
//
// The core functionalities include:
//   - Transactions: buy, sell, analysis and expense records, immutable once
//     saved, identified by a per-type prefix and counter (B-1001, S-1001, ...).
//   - Market Data: gold gram prices for 24, 21 and 18 karat derived from an
//     ounce price, and the overlay of live prices on the manual settings.
//   - Accounting: a stateless computation of sales, purchases, expenses,
//     taxes, net profit and the partners' split of it.
//   - Staff: employees, partners, exit permissions and application users.
//   - Exports: CSV reports and JSON records for human consumption.
//
// Persistence lives in package store, live prices in package price, printable
// documents in package renderer. This package serves as the foundational
// logic for the `gbk` command-line tool.
package goldbook
