// Package blog provides the content access-control and lifecycle engine for a
// multi-author blog with admin and author roles plus anonymous readers.
//
// The package exposes pure building blocks (Authorize, Slugify, ResolveSlug,
// DeriveExcerpt, ApplyLifecycle, ScopeComments) and a Service that runs every
// content mutation through them inside a single repository transaction:
//
//	lock slug scope -> load persisted state -> authorize -> normalize slug and
//	excerpt -> lifecycle transition -> write
//
// Actors are passed explicitly. A nil *Actor is a guest. The package never
// authenticates; the transport layer resolves identity and hands it in.
//
// Repository implementations live under repo/ (memory, postgres). Comment
// creation can be throttled with a limiter from the ratelimit subpackage, and
// domain events can be published through an EventSink such as the Kafka sink
// in the events subpackage.
package blog
