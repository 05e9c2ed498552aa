package bridge

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// connectMQTT dials the configured broker. Connection failure at startup
// is fatal for the sink: an operator who enabled MQTT wants to know the
// broker is unreachable, not a silent no-op.
func (a *App) connectMQTT() error {
	opts := mqtt.NewClientOptions().
		AddBroker(a.cfg.MQTT.Broker).
		SetClientID(a.cfg.MQTT.ClientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect %s: %w", a.cfg.MQTT.Broker, token.Error())
	}
	a.log.Printf("connected to MQTT broker at %s", a.cfg.MQTT.Broker)
	a.mq = client
	return nil
}

// publishMQTT sends payload to <topic_prefix>/<subtopic> when MQTT is
// enabled. Status events are retained so late subscribers get the last
// known state immediately; publish errors are logged and the loop moves
// on.
func (a *App) publishMQTT(subtopic string, payload any, retained bool) {
	if a.mq == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		a.log.Printf("error: mqtt payload marshal: %v", err)
		return
	}
	topic := a.cfg.MQTT.TopicPrefix + "/" + subtopic
	if token := a.mq.Publish(topic, 0, retained, b); token.Wait() && token.Error() != nil {
		a.log.Printf("error: mqtt publish %s: %v", topic, token.Error())
	}
}
