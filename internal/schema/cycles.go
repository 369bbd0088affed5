package schema

// CyclicMessages returns the full names of every message that sits on a
// reference cycle formed by required message-typed fields. Optional,
// repeated, map and oneof references already go through an indirection
// in the generated model, so only required normal fields create value
// cycles that need boxing.
func CyclicMessages(file *SchemaFile) map[string]bool {
	index := make(map[string]*Message)
	for _, msg := range file.AllMessages() {
		index[msg.FullName] = msg
	}

	adjacent := make(map[string][]string, len(index))
	for name, msg := range index {
		for _, field := range msg.Fields {
			if field.Repeated || field.Optional {
				continue
			}
			resolved := Resolve(msg, field.Type)
			if resolved.Kind != KindMessage {
				continue
			}
			if _, ok := index[resolved.Name]; ok {
				adjacent[name] = append(adjacent[name], resolved.Name)
			}
		}
	}

	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(index))
	cyclic := make(map[string]bool)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		state[name] = onStack
		stack = append(stack, name)
		for _, target := range adjacent[name] {
			switch state[target] {
			case unvisited:
				visit(target)
			case onStack:
				// Every node from the back-edge target to the stack top is
				// on the cycle.
				for i := len(stack) - 1; i >= 0; i-- {
					cyclic[stack[i]] = true
					if stack[i] == target {
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
	}

	for name := range index {
		if state[name] == unvisited {
			visit(name)
		}
	}

	return cyclic
}
