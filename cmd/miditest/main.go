package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"xtouch-bridge/midi"
	"xtouch-bridge/router"
	"xtouch-bridge/surface"
	"xtouch-bridge/theme"
	"xtouch-bridge/widgets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	defer midi.CloseDriver()

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detectXTouch()
	case "segments":
		testSegments(os.Args[2:])
	case "scribble":
		testScribble(os.Args[2:])
	case "leds":
		testLEDs()
	case "monitor":
		monitor()
	case "poll":
		pollDevices()
	case "preview":
		preview()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("X-Touch Test Scripts")
	fmt.Println("")
	fmt.Println(widgets.RenderKeyHelp([]widgets.KeySection{{
		Title: "Commands:",
		Keys: []widgets.KeyBinding{
			{Key: "list", Desc: "List all MIDI ports"},
			{Key: "detect", Desc: "Find the X-Touch"},
			{Key: "segments [text]", Desc: "Write text to the segment display"},
			{Key: "scribble <cell> <top> [bottom] [color]", Desc: "Write a scribble strip"},
			{Key: "leds", Desc: "Walk through every button LED"},
			{Key: "monitor", Desc: "Print incoming events (Ctrl+C to exit)"},
			{Key: "poll", Desc: "Poll for device changes"},
			{Key: "preview", Desc: "Render the startup screen without hardware"},
		},
	}}))
}

func listPorts() {
	fmt.Println("(waiting up to 3 seconds...)")
	ports, err := midi.Scan(midi.ScanTimeout)
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}

	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ports.InNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range ports.OutNames() {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func detectXTouch() {
	fmt.Println("Looking for X-Touch...")
	ports, err := midi.Scan(midi.ScanTimeout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	inIdx, outIdx := ports.DetectXTouch()
	if inIdx >= 0 {
		fmt.Printf("Found input: %d: %s\n", inIdx, ports.InNames()[inIdx])
	}
	if outIdx >= 0 {
		fmt.Printf("Found output: %d: %s\n", outIdx, ports.OutNames()[outIdx])
	}

	if inIdx >= 0 && outIdx >= 0 {
		fmt.Println("\nX-Touch detected!")
	} else {
		fmt.Println("\nX-Touch not found")
	}
}

// openXTouch opens the first X-Touch found, or reports why it can't
func openXTouch() (*midi.Port, bool) {
	ports, err := midi.Scan(midi.ScanTimeout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil, false
	}
	inIdx, outIdx := ports.DetectXTouch()
	if outIdx < 0 {
		fmt.Println("No X-Touch found")
		return nil, false
	}
	in := ""
	if inIdx >= 0 {
		in = strconv.Itoa(inIdx)
	}
	port, err := ports.Open("x-touch", in, strconv.Itoa(outIdx))
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return nil, false
	}
	fmt.Printf("Using output: %s\n", ports.OutNames()[outIdx])
	return port, true
}

func testSegments(args []string) {
	text := "0123456789ab"
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}

	port, ok := openXTouch()
	if !ok {
		return
	}
	defer port.Close()

	s := surface.New(port)
	fmt.Printf("Sending: %q\n", text)
	if err := s.SetSegmentText(0, text); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()
	s.ClearSegments()
	fmt.Println("Done!")
}

func testScribble(args []string) {
	if len(args) < 2 {
		usage()
		return
	}
	cell, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("Bad cell %q\n", args[0])
		return
	}
	top := args[1]
	bottom := ""
	if len(args) > 2 {
		bottom = args[2]
	}
	color := "white"
	if len(args) > 3 {
		color = args[3]
	}

	port, ok := openXTouch()
	if !ok {
		return
	}
	defer port.Close()

	s := surface.New(port)
	if err := s.SetCellColor(cell, color, false, false); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := s.SetCellText(cell, surface.Text(top), surface.Text(bottom)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()
	s.ResetCells()
	fmt.Println("Done!")
}

func testLEDs() {
	fmt.Println("Testing LED control...")

	port, ok := openXTouch()
	if !ok {
		return
	}
	defer port.Close()

	s := surface.New(port)
	for id := 0; id < surface.NumLEDs; id++ {
		s.On(id)
		time.Sleep(30 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	s.AllOff()
	fmt.Println("Done!")
}

func monitor() {
	port, ok := openXTouch()
	if !ok {
		return
	}
	defer port.Close()

	fmt.Println("Listening. Ctrl+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, ev := range midi.Debounce(port.ReadBatch(midi.MaxBatch)) {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), ev)
			}
		}
	}
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect the X-Touch to test. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		ports, err := midi.Scan(midi.ScanTimeout)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			time.Sleep(2 * time.Second)
			continue
		}
		inNames, outNames := ports.InNames(), ports.OutNames()

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			if in, out := ports.DetectXTouch(); in >= 0 || out >= 0 {
				fmt.Println("  -> X-Touch detected!")
			}

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}

// preview runs the startup sequence and a few button presses against an
// in-memory transport and prints the resulting surface
func preview() {
	fake := midi.NewFakeTransport("preview")
	r := router.New(router.Config{Surface: fake})
	s := r.Surface()

	if err := r.Startup(context.Background(), 0); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for i, color := range surface.ColorNames {
		if err := s.SetCellColor(i, color, false, false); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := s.SetCellText(i, surface.Text("Display"), surface.Text(strconv.Itoa(i))); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	presses := []midi.Event{
		midi.NewNoteOn(0, router.NoteModePresets, 127),
		midi.NewNoteOn(0, router.NoteBankUp, 127),
		midi.NewNoteOn(0, router.NoteBankUp, 0),
		midi.NewNoteOn(0, router.NoteBankUp, 127),
		midi.NewControlChange(0, router.CCEncoder0, 65),
	}
	for _, ev := range presses {
		fake.Queue(ev)
		r.Step()
	}

	fmt.Println(widgets.RenderSurface(&s.State, theme.New()))
	fmt.Printf("\n%d messages, %d sysex frames\n", len(fake.Written), len(fake.SysExFrames()))
}
