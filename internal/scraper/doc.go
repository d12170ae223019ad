// Package scraper provides HTTP fetching and HTML parsing for the ticket page.
//
// The fetcher sends a browser-like header set and sniffs the gzip magic number
// before decoding, since some ticket hosts return compressed bodies regardless
// of what the transport negotiated. The parser walks the page's date blocks and
// emits one entry per block, preserving document order.
package scraper
