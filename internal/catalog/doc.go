// Package catalog defines the product records shared by the remote client,
// the local mirror, and the store, along with the few rules that belong to
// the data itself: the fixed category table, id synthesis for locally
// created products, and required-field validation of create drafts.
package catalog
