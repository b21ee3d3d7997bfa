package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	viomi "github.com/homectl/viomi"
)

// seqState preserves RPC sequence-number continuity across
// invocations. The session only exposes the counters; reading and
// writing this file is the CLI's job.
type seqState struct {
	Seq       int `json:"seq"`
	ManualSeq int `json:"manual_seq"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	seqPath := seqFilePath()
	state := loadSeqState(seqPath)

	transport, err := viomi.NewMQTTTransport(viomi.MQTTConfig{
		BrokerURL:   envOrDefault("VIOMI_MQTT_BROKER", "tcp://localhost:1883"),
		Username:    os.Getenv("VIOMI_MQTT_USERNAME"),
		Password:    os.Getenv("VIOMI_MQTT_PASSWORD"),
		TopicPrefix: envOrDefault("VIOMI_MQTT_TOPIC", "viomi/vacuum"),
	})
	if err != nil {
		fatal("connect", err)
	}
	session := viomi.NewSession(transport, viomi.Config{
		StartID:       state.Seq,
		ManualStartID: state.ManualSeq,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	cmdErr := dispatch(ctx, session, os.Args[1], os.Args[2:])
	cancel()

	saveSeqState(seqPath, seqState{Seq: session.Seq(), ManualSeq: session.ManualSeq()})
	_ = session.Close()

	if cmdErr != nil {
		fatal(os.Args[1], cmdErr)
	}
}

func dispatch(ctx context.Context, session *viomi.Session, command string, args []string) error {
	switch command {
	case "status":
		status, err := session.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Print(viomi.Report(status))
		return nil
	case "consumables":
		consumables, err := session.Consumables(ctx)
		if err != nil {
			return err
		}
		fmt.Print(viomi.ConsumablesReport(consumables))
		return nil
	case "start":
		flags := flag.NewFlagSet("start", flag.ExitOnError)
		rooms := flags.String("rooms", "", "comma-separated room ids or names")
		_ = flags.Parse(args)
		if *rooms != "" {
			return session.StartWithRooms(ctx, strings.Split(*rooms, ","))
		}
		return session.Start(ctx)
	case "pause":
		return session.Pause(ctx)
	case "stop":
		return session.Stop(ctx)
	case "home":
		return session.Home(ctx)
	case "mode":
		mode, err := viomi.ParseCleanMode(argOne(args, "mode name"))
		if err != nil {
			return err
		}
		return session.SetCleanMode(ctx, mode)
	case "fan":
		if len(args) == 0 {
			presets := viomi.FanSpeedPresets()
			names := make([]string, 0, len(presets))
			for name := range presets {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s\t%d\n", name, presets[name])
			}
			return nil
		}
		speed, err := viomi.ParseFanSpeed(args[0])
		if err != nil {
			return err
		}
		return session.SetFanSpeed(ctx, speed)
	case "water":
		grade, err := viomi.ParseWaterGrade(argOne(args, "water grade"))
		if err != nil {
			return err
		}
		return session.SetWaterGrade(ctx, grade)
	case "edge":
		on, err := onOff(argOne(args, "on|off"))
		if err != nil {
			return err
		}
		state := viomi.EdgeOff
		if on {
			state = viomi.EdgeOn
		}
		return session.SetEdge(ctx, state)
	case "repeat":
		on, err := onOff(argOne(args, "on|off"))
		if err != nil {
			return err
		}
		return session.SetRepeat(ctx, on)
	case "remember":
		on, err := onOff(argOne(args, "on|off"))
		if err != nil {
			return err
		}
		return session.SetRemember(ctx, on)
	case "led":
		on, err := onOff(argOne(args, "on|off"))
		if err != nil {
			return err
		}
		state := viomi.LEDOff
		if on {
			state = viomi.LEDOn
		}
		return session.SetLED(ctx, state)
	case "voice":
		level, err := strconv.Atoi(argOne(args, "level 0-10"))
		if err != nil || level < 0 || level > 10 {
			return fmt.Errorf("voice level must be 0-10")
		}
		return session.SetVoice(ctx, viomi.VoiceLevel(level))
	case "language":
		switch argOne(args, "chinese|english") {
		case "chinese":
			return session.SetLanguage(ctx, viomi.LanguageChinese)
		case "english":
			return session.SetLanguage(ctx, viomi.LanguageEnglish)
		default:
			return fmt.Errorf("language must be chinese or english")
		}
	case "route":
		switch argOne(args, "s|y") {
		case "s":
			return session.SetRoutePattern(ctx, viomi.RouteS)
		case "y":
			return session.SetRoutePattern(ctx, viomi.RouteY)
		default:
			return fmt.Errorf("route must be s or y")
		}
	case "carpet":
		switch argOne(args, "off|medium|turbo") {
		case "off":
			return session.SetCarpetTurbo(ctx, viomi.CarpetTurboOff)
		case "medium":
			return session.SetCarpetTurbo(ctx, viomi.CarpetTurboMedium)
		case "turbo":
			return session.SetCarpetTurbo(ctx, viomi.CarpetTurboOn)
		default:
			return fmt.Errorf("carpet mode must be off, medium or turbo")
		}
	case "dnd":
		dnd, err := session.DND(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("enabled: %t\nstart: %02d:%02d\nend: %02d:%02d\n",
			dnd.Enabled, dnd.StartHour, dnd.StartMinute, dnd.EndHour, dnd.EndMinute)
		return nil
	case "set-dnd":
		flags := flag.NewFlagSet("set-dnd", flag.ExitOnError)
		disable := flags.Bool("disable", false, "disable do-not-disturb")
		_ = flags.Parse(args)
		rest := flags.Args()
		if len(rest) != 4 {
			return fmt.Errorf("set-dnd needs <start_hr> <start_min> <end_hr> <end_min>")
		}
		values := make([]int, 4)
		for i, raw := range rest {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid time component %q", raw)
			}
			values[i] = v
		}
		return session.SetDND(ctx, viomi.DNDStatus{
			Enabled:     !*disable,
			StartHour:   values[0],
			StartMinute: values[1],
			EndHour:     values[2],
			EndMinute:   values[3],
		})
	case "rooms":
		flags := flag.NewFlagSet("rooms", flag.ExitOnError)
		refresh := flags.Bool("refresh", false, "rebuild the cached room table")
		mapID := flags.Int64("map-id", 0, "validate against this map id")
		mapName := flags.String("map-name", "", "validate against this map name")
		_ = flags.Parse(args)
		rooms, err := session.Rooms(ctx, viomi.RoomsOptions{
			MapID:   *mapID,
			MapName: *mapName,
			Refresh: *refresh,
		})
		if err != nil {
			return err
		}
		for _, id := range sortedKeys(rooms) {
			fmt.Printf("%s\t%s\n", id, rooms[id])
		}
		return nil
	case "maps":
		maps, err := session.Maps(ctx)
		if err != nil {
			return err
		}
		for _, m := range maps {
			marker := ""
			if m.Current {
				marker = "\t(current)"
			}
			fmt.Printf("%d\t%s%s\n", m.ID, m.Name, marker)
		}
		return nil
	case "select-map":
		id, err := mapIDArg(args)
		if err != nil {
			return err
		}
		return session.SelectMap(ctx, id)
	case "delete-map":
		id, err := mapIDArg(args)
		if err != nil {
			return err
		}
		return session.DeleteMap(ctx, id)
	case "rename-map":
		if len(args) < 2 {
			return fmt.Errorf("rename-map needs <map_id> <name>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid map id %q", args[0])
		}
		return session.RenameMap(ctx, id, args[1])
	case "move":
		flags := flag.NewFlagSet("move", flag.ExitOnError)
		duration := flags.Duration("duration", 500*time.Millisecond, "how long to drive")
		_ = flags.Parse(args)
		rest := flags.Args()
		if len(rest) != 1 {
			return fmt.Errorf("move needs a direction")
		}
		direction, err := viomi.ParseMovementDirection(rest[0])
		if err != nil {
			return err
		}
		return session.Move(ctx, direction, *duration)
	case "track":
		flags := flag.NewFlagSet("track", flag.ExitOnError)
		out := flags.String("out", "path.png", "output image path")
		scale := flags.Float64("scale", 1, "coordinate multiplier")
		backoff := flags.Duration("backoff", 3*time.Second, "sleep between polls")
		_ = flags.Parse(args)
		tracker := viomi.NewPathTracker(session, *out)
		tracker.Scale = *scale
		tracker.Backoff = *backoff
		return tracker.Run(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func argOne(args []string, what string) string {
	if len(args) < 1 {
		fatal("args", fmt.Errorf("missing %s", what))
	}
	return args[0]
}

func onOff(arg string) (bool, error) {
	switch arg {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", arg)
	}
}

func mapIDArg(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing map id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid map id %q", args[0])
	}
	return id, nil
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func seqFilePath() string {
	if path := os.Getenv("VIOMI_SEQ_FILE"); path != "" {
		return path
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "viomi-seq.json"
	}
	return filepath.Join(cache, "viomi", "seq.json")
}

func loadSeqState(path string) seqState {
	var state seqState
	data, err := os.ReadFile(path)
	if err != nil {
		return state
	}
	_ = json.Unmarshal(data, &state)
	return state
}

func saveSeqState(path string, state seqState) {
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func usage() {
	fmt.Println("viomi-cli <command> [args]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  status")
	fmt.Println("  consumables")
	fmt.Println("  start [--rooms id,name,...]")
	fmt.Println("  pause | stop | home")
	fmt.Println("  mode <vacuum|vacuum_and_mop|mop|clean_zone|clean_spot>")
	fmt.Println("  fan [silent|standard|medium|turbo]  (no argument lists presets)")
	fmt.Println("  water <low|medium|high>")
	fmt.Println("  edge|repeat|remember|led <on|off>")
	fmt.Println("  voice <0-10>")
	fmt.Println("  language <chinese|english>")
	fmt.Println("  route <s|y>")
	fmt.Println("  carpet <off|medium|turbo>")
	fmt.Println("  dnd")
	fmt.Println("  set-dnd [--disable] <start_hr> <start_min> <end_hr> <end_min>")
	fmt.Println("  rooms [--refresh] [--map-id N] [--map-name NAME]")
	fmt.Println("  maps")
	fmt.Println("  select-map <id> | rename-map <id> <name> | delete-map <id>")
	fmt.Println("  move <forward|left|right|backward> [--duration 500ms]")
	fmt.Println("  track [--out path.png] [--scale N] [--backoff 3s]")
	fmt.Println("")
	fmt.Println("Environment: VIOMI_MQTT_BROKER, VIOMI_MQTT_TOPIC,")
	fmt.Println("  VIOMI_MQTT_USERNAME, VIOMI_MQTT_PASSWORD, VIOMI_SEQ_FILE")
}

func fatal(action string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", action, err)
	os.Exit(1)
}
