package realtime

// EventApplyConfig is the broadcast event the device agent treats as "fetch
// and apply this full configuration".
const EventApplyConfig = "APPLY_CONFIG"

// CommandEnvelope is the broadcast payload for a one-shot device command.
type CommandEnvelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ConfigEnvelope is the broadcast payload for a configuration push.
type ConfigEnvelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// NewCommand builds a command envelope. A nil payload becomes an empty
// object so the agent always sees {type, payload}.
func NewCommand(cmdType string, payload map[string]interface{}) CommandEnvelope {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return CommandEnvelope{Type: cmdType, Payload: payload}
}

// NewConfigPush builds an APPLY_CONFIG envelope carrying the full document.
func NewConfigPush(content map[string]interface{}) ConfigEnvelope {
	return ConfigEnvelope{Event: EventApplyConfig, Payload: content}
}
