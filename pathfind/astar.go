// Package pathfind computes shortest routes through a carved maze.
package pathfind

import (
	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// node is an entry of the open set.
type node struct {
	pos maze.Position
	g   int    // steps from start
	f   int    // g + Manhattan distance to goal
	seq uint64 // insertion order, breaks ties on f
}

// less orders the open set by f, then by insertion order so equal-cost entries pop first-in first-out.
func less(a, b node) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// FindPath returns the shortest route from start to goal inclusive using A* with the
// Manhattan heuristic. It returns nil when either end is outside the grid or the goal
// cannot be reached.
func FindPath(g *maze.Grid, start, goal maze.Position) []maze.Position {
	if g.At(start) == nil || g.At(goal) == nil {
		return nil
	}
	if start == goal {
		return []maze.Position{start}
	}

	var seq uint64
	openSet := heap.New[node](less)
	openSet.Push(node{pos: start, g: 0, f: start.Manhattan(goal), seq: seq})

	closedSet := mapset.New[maze.Position]()
	gScore := map[maze.Position]int{start: 0}
	cameFrom := make(map[maze.Position]maze.Position)

	for openSet.Size() > 0 {
		current, _ := openSet.Pop()
		if closedSet.Has(current.pos) {
			continue // stale entry superseded by a cheaper push
		}

		if current.pos == goal {
			return reconstruct(cameFrom, start, goal)
		}
		closedSet.Put(current.pos)

		for _, d := range maze.Directions {
			next, ok := g.Step(current.pos, d)
			if !ok || closedSet.Has(next) {
				continue
			}

			tentativeG := current.g + 1
			if best, seen := gScore[next]; seen && tentativeG >= best {
				continue
			}

			gScore[next] = tentativeG
			cameFrom[next] = current.pos
			seq++
			openSet.Push(node{pos: next, g: tentativeG, f: tentativeG + next.Manhattan(goal), seq: seq})
		}
	}

	return nil
}

// reconstruct walks predecessor links back from goal and returns the route in start to goal order.
func reconstruct(cameFrom map[maze.Position]maze.Position, start, goal maze.Position) []maze.Position {
	path := []maze.Position{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Steps returns the number of moves along a path, zero for an empty one.
func Steps(path []maze.Position) int {
	if len(path) == 0 {
		return 0
	}
	return len(path) - 1
}
