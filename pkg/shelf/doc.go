// Package shelf stores typed values in an untyped, string-keyed store.
//
// A Key binds a slot name to the bridge that converts its values:
//
//	var followerCount = shelf.NewKey("followerCount", bridge.Int())
//	var followers = shelf.NewKey("followers", bridge.SliceOf[User]())
//
//	s, _ := shelf.New(store)
//	_ = shelf.Set(s, followerCount, 3)
//	n, ok := shelf.Get(s, followerCount)
//
// Reads never fail: a missing slot, a value of the wrong kind and a value the
// bridge rejects all read as absent. Default wraps a key and a fallback so
// that absent reads return the fallback.
package shelf
