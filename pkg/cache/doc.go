// Package cache stores rendered markup keyed by tag name and props.
//
// Two backends are provided: Memory for single-process use and Redis for
// sharing renders across server instances. Both are safe for concurrent use.
//
//	c := cache.NewRedis(client, cache.WithPrefix("ssr:"))
//	key, _ := cache.Key("x-greeting", props)
//	if html, ok, _ := c.Get(ctx, key); ok {
//	    return html
//	}
package cache
