package id

import (
	"math/rand"
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	once sync.Once
	node *snowflake.Node
)

// New returns a process-unique, time-ordered 64-bit identifier. The
// snowflake node number comes from SNOWFLAKE_NODE_ID when set so that
// multiple replicas never collide; otherwise a random node is used.
func New() int64 {
	once.Do(func() {
		nodeID := int64(rand.Intn(1024))
		if v := os.Getenv("SNOWFLAKE_NODE_ID"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}

		var err error
		node, err = snowflake.NewNode(nodeID)
		if err != nil {
			panic(err)
		}
	})

	return node.Generate().Int64()
}
