package checkout

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// OrderNumberPrefix starts every human-facing order number.
const OrderNumberPrefix = "ORD"

// OrderNumberGenerator yields unique, time-ordered order numbers.
type OrderNumberGenerator interface {
	Next() string
}

type snowflakeNumbers struct {
	node *snowflake.Node
}

// NewOrderNumberGenerator returns a generator for the given node. Every
// process that creates orders needs a distinct nodeID in [0, 1023].
func NewOrderNumberGenerator(nodeID int64) (OrderNumberGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("order number node %d: %w", nodeID, err)
	}
	return &snowflakeNumbers{node: node}, nil
}

func (g *snowflakeNumbers) Next() string {
	return OrderNumberPrefix + g.node.Generate().String()
}
