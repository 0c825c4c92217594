// Package urlcheck finds URL-like substrings in text and judges single URLs
// with static rules. Nothing here touches the network.
//
// Extraction runs three ordered passes over the text: scheme-prefixed URLs,
// "www." URLs, then bare dotted domains. A later pass never reports a span
// that overlaps one already claimed by an earlier pass. Email addresses are
// left alone: a domain right after "@" and a bare local part right before "@"
// are both skipped.
package urlcheck
