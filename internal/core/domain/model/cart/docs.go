// Package cart models the single-restaurant shopping cart that is converted
// into an order on checkout.
package cart
