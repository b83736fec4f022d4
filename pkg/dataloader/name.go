package dataloader

// LoaderName identifies one loader kind. It is the lookup key of the table and the node id of the
// dependency graph.
type LoaderName string

func (n LoaderName) String() string {
	return string(n)
}
