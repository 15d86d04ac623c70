// Package tavus implements a minimal client for creating conversations with
// the Tavus conversational video API.
//
// Only the "create conversation" call is modelled. The response is treated
// as loosely specified: the only field callers branch on is the
// conversation URL, which is either present or absent.
//
// https://docs.tavus.io/api-reference/conversations/create-conversation
package tavus
