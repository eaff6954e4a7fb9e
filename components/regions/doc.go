// Package regions serves hierarchical administrative divisions as JSON option
// lists, the data side of a cascading select chain.
//
// The default handler responds to GET and HEAD requests. Without the parent
// parameter it returns the top-level regions; with ?id=<parent> it returns the
// children of that region, or an empty list for unknown ids. Responses use the
// envelope {"boolen":1,"data":[...]} expected by existing cascade clients. The
// backing tree is loaded from the embedded data/regions.yaml unless a tree is
// supplied through WithTree.
package regions
