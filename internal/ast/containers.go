package ast

// ListCreate is `List<T>()`.
type ListCreate struct {
	Base
	ElementType string
}

func (*ListCreate) exprNode() {}

// PairCreate is `Pair<T>()`.
type PairCreate struct {
	Base
	ElementType string
}

func (*PairCreate) exprNode() {}

// TupleCreate is `Tuple<T>()`.
type TupleCreate struct {
	Base
	ElementType string
}

func (*TupleCreate) exprNode() {}

// MapCreate is `Map<K, V>()`.
type MapCreate struct {
	Base
	KeyType   string
	ValueType string
}

func (*MapCreate) exprNode() {}

// SetCreate is `Set<T>()`.
type SetCreate struct {
	Base
	ElementType string
}

func (*SetCreate) exprNode() {}

// DequeCreate is `Deque<T>()`.
type DequeCreate struct {
	Base
	ElementType string
}

func (*DequeCreate) exprNode() {}

// StackCreate is `Stack<T>()`.
type StackCreate struct {
	Base
	ElementType string
}

func (*StackCreate) exprNode() {}

// QueueCreate is `Queue<T>()`.
type QueueCreate struct {
	Base
	ElementType string
}

func (*QueueCreate) exprNode() {}

// PriorityQueueCreate is `PriorityQueue<T>(min: bool)`; IsMinHeap records
// which heap order the construction requested.
type PriorityQueueCreate struct {
	Base
	ElementType string
	IsMinHeap   bool
}

func (*PriorityQueueCreate) exprNode() {}
