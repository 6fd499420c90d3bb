// Package telegram wraps the Bot API behind the narrow capabilities the rest
// of the bot consumes: membership lookup, upload retrieval, and outbound
// delivery.
//
// The pipeline and gate packages declare the interfaces they need; Client is
// the single concrete implementation. Keeping the Bot API types out of the
// pipeline lets tests substitute fakes without network access.
package telegram
