package floorplan

// MinRoomArea is the smallest area, in square inches, of a materialized room.
const MinRoomArea = 100.0

const minCycleWalls = 3

// DeriveRooms rebuilds the room list from scratch.
//
// Walls are nodes of a connectivity graph (ConnectTolerance). For every wall
// not yet processed, a depth-first search looks for a path of at least three
// walls that returns to the starting wall. The search leaves each wall through
// the endpoint it did not enter by, so a successful search is a geometric loop.
// Walls of a successful search are marked processed whether or not the room is
// materialized; an exhausted search only marks its starting wall. A room is
// materialized when it is closed and its area exceeds MinRoomArea.
//
// Degenerate walls are skipped.
func DeriveRooms(walls []*Wall) []*Room {
	usable := make([]*Wall, 0, len(walls))
	for _, w := range walls {
		if w != nil && !w.IsDegenerate() {
			usable = append(usable, w)
		}
	}

	adj := connectivity(usable, ConnectTolerance)
	processed := make([]bool, len(usable))
	rooms := make([]*Room, 0)

	for i := range usable {
		if processed[i] {
			continue
		}

		path, ok := findCycle(usable, adj, i)
		if !ok {
			processed[i] = true
			continue
		}

		cycle := make([]*Wall, 0, len(path))
		for _, idx := range path {
			processed[idx] = true
			cycle = append(cycle, usable[idx])
		}

		room := NewRoom(cycle)
		if room.IsClosed() && room.Area() > MinRoomArea {
			rooms = append(rooms, room)
		}
	}

	return rooms
}

// connectivity builds adjacency lists in wall index order.
func connectivity(walls []*Wall, tolerance float64) [][]int {
	adj := make([][]int, len(walls))
	for i := 0; i < len(walls); i++ {
		for j := i + 1; j < len(walls); j++ {
			if walls[i].ConnectedTo(walls[j], tolerance) {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	return adj
}

// cycleFrame is one wall on the search path. exit is the endpoint the path
// leaves through; next is the adjacency index to try next.
type cycleFrame struct {
	wall int
	exit Point
	next int
}

// findCycle runs an explicit-stack DFS from walls[start] and returns the wall
// indices of the first loop found, in traversal order. Stack depth is bounded
// by the wall count.
func findCycle(walls []*Wall, adj [][]int, start int) ([]int, bool) {
	entry := walls[start].Start
	visited := make([]bool, len(walls))
	visited[start] = true
	stack := []cycleFrame{{wall: start, exit: walls[start].End}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(adj[top.wall]) {
			// Dead end: free the wall so another branch may use it.
			visited[top.wall] = false
			stack = stack[:len(stack)-1]
			continue
		}

		n := adj[top.wall][top.next]
		top.next++

		if n == start {
			if len(stack) >= minCycleWalls && top.exit.DistanceTo(entry) < ConnectTolerance {
				path := make([]int, len(stack))
				for i, f := range stack {
					path[i] = f.wall
				}
				return path, true
			}
			continue
		}
		if visited[n] {
			continue
		}

		far, ok := walls[n].otherEnd(top.exit, ConnectTolerance)
		if !ok {
			continue
		}
		visited[n] = true
		stack = append(stack, cycleFrame{wall: n, exit: far})
	}

	return nil, false
}
