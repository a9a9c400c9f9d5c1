// Package progress turns download status rows into aggregate progress and
// drives the polling loop that watches a batch of downloads until every one of
// them has succeeded.
package progress
