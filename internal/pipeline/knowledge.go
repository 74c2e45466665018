package pipeline

import "strings"

// knowledgeBase is the theory specialist's lookup source: a small curated
// reference of agent-architecture topics. Lookups are substring matches over
// lowercased topic text.
var knowledgeBase = map[string]string{
	"react": "ReAct interleaves reasoning traces with actions: the model " +
		"thinks about what to do, invokes a tool, observes the result, and " +
		"repeats until it can answer. The explicit thought-action-observation " +
		"loop makes agent behavior auditable.",
	"state graph": "A state graph models an agent workflow as nodes that " +
		"transform a shared state bag, connected by edges that may carry " +
		"routing conditions. Execution walks the graph from an entry point " +
		"to an exit point, threading state through each node.",
	"multi-agent": "Multi-agent systems decompose a problem across " +
		"specialized agents coordinated by a supervisor or router. Each " +
		"specialist owns a narrow competency, which keeps prompts focused " +
		"and outputs easier to validate.",
	"memory": "Agent memory splits into short-term context carried within a " +
		"session and long-term recall persisted across sessions. Retrieval " +
		"selects which stored material is relevant enough to re-enter the " +
		"prompt window.",
	"routing": "Routing classifies an incoming request and dispatches it to " +
		"the handler best suited to answer. A total routing table with an " +
		"explicit fallback guarantees every request is handled even when " +
		"classification is uncertain.",
}

const knowledgeMiss = "No curated reference material for this topic."

// lookupKnowledge returns reference text for a topic, or a miss notice when
// nothing in the knowledge base matches.
func lookupKnowledge(topic string) string {
	needle := strings.ToLower(strings.TrimSpace(topic))
	if needle == "" {
		return knowledgeMiss
	}

	for key, entry := range knowledgeBase {
		if strings.Contains(needle, key) || strings.Contains(key, needle) {
			return entry
		}
	}

	return knowledgeMiss
}
