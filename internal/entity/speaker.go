package entity

import "github.com/forgeware/bpdecode/internal/fields"

func init() {
	registerDecoder("programmable-speaker", speakerDecoder)
}

// speakerDecoder reads the programmable speaker's sound parameters
// (volume, playback gates) and its circuit-driven alert signal.
func speakerDecoder(ctx *Context) (map[string]interface{}, error) {
	volume, err := ctx.R.F32()
	if err != nil {
		return nil, err
	}
	playGlobally, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	allowPolyphony, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	showAlert, err := ctx.R.Bool()
	if err != nil {
		return nil, err
	}
	alertIcon, err := fields.ReadSignal(ctx.R, ctx.Idx)
	if err != nil {
		return nil, err
	}
	alertMessage, err := ctx.R.String()
	if err != nil {
		return nil, err
	}
	conns, cond, err := circuitLogic(ctx)
	if err != nil {
		return nil, err
	}

	parameters := map[string]interface{}{"playback_volume": volume}
	if playGlobally {
		parameters["playback_globally"] = true
	}
	if allowPolyphony {
		parameters["allow_polyphony"] = true
	}

	alert := map[string]interface{}{}
	if showAlert {
		alert["show_alert"] = true
	}
	if v := signalValue(alertIcon); v != nil {
		alert["icon_signal_id"] = v
	}
	if alertMessage != "" {
		alert["alert_message"] = alertMessage
	}

	rec := map[string]interface{}{"parameters": parameters}
	if len(alert) > 0 {
		rec["alert_parameters"] = alert
	}
	applyCircuitLogic(rec, conns, cond)
	return rec, nil
}
