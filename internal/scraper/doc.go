// Package scraper fetches the Federal Reserve's FOMC historical pages.
//
// The index page links one archive page per year (fomchistoricalYYYY.htm). The scraper
// discovers those years, fetches each year page with a browser-like User-Agent, and spaces
// successive requests with a rate limiter as a courtesy to the server. It also lists the
// document links on a page for inspection.
package scraper
