// Package cli implements the command-line interface for gbfomc.
//
// The root command builds the Greenbook/FOMC mapping and writes it as CSV. The years
// subcommand shows which archive years the index page links, and links lists the
// Greenbook documents found on one year page. All commands share the network flags.
package cli
