// Package clientbook tracks the stock portfolios of several clients and
// computes their profit and loss.
//
// The core of the package is a stateless accounting engine. It takes the
// transactions of one client, as loaded from the record store, and optionally
// the current market price of the stocks involved, and derives:
//   - Deployed capital: the total amount spent on buys.
//   - Realized profit: the gain or loss already booked by sells.
//   - Unrealized positions: per stock, the average buy price, the quantity
//     bought and the gain or loss at the current market price.
//   - Remaining value: the deployed capital marked to market.
//
// The engine performs no I/O. Persistence lives in the store package, price
// lookups in the quote package, and presentation in the renderer, cmd and
// server packages.
package clientbook
