package status

import "ledstatus-go/bus"

// Topics the keyboard's engines publish device status on. The controller
// subscribes to the whole kbd subtree and dispatches on payload type.

func TopicConnection() bus.Topic { return bus.T("kbd", "connection") }
func TopicPairing() bus.Topic    { return bus.T("kbd", "pairing") }
func TopicBattery() bus.Topic    { return bus.T("kbd", "battery") }
func TopicProfile() bus.Topic    { return bus.T("kbd", "profile") }
func TopicKey() bus.Topic        { return bus.T("kbd", "key") }

func topicAll() bus.Topic { return bus.T("kbd", "#") }
