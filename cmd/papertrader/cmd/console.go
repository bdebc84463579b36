package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/sim"
)

type consoleOptions struct {
	// Window is the default number of bars printed by "window".
	// Zero prints all history up to today.
	Window int
	// Prompt prints "> " before reading each command.
	Prompt bool
	// Echo repeats each command, which makes scripted output readable.
	Echo bool
}

// console drives a session from line oriented text commands.
type console struct {
	sess *sim.Session
	out  io.Writer
	opts consoleOptions
}

const consoleHelp = `Commands:
  buy | buy-half | sell | sell-half | hold   trade at today's close
  next                                       advance one day
  status                                     show the portfolio
  window [n]                                 show the last n bars
  log                                        show the activity log
  report                                     show the result so far
  help                                       show this help
  quit                                       stop`

// runConsole reads commands from in until quit or end of input. Blank
// lines and lines starting with '#' are ignored.
func runConsole(sess *sim.Session, in io.Reader, out io.Writer, opts consoleOptions) error {
	c := &console{sess: sess, out: out, opts: opts}
	c.status()

	sc := bufio.NewScanner(in)
	for {
		if opts.Prompt {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if opts.Echo {
			fmt.Fprintf(out, "> %s\n", line)
		}
		if c.exec(line) {
			return nil
		}
	}
	return sc.Err()
}

// exec runs one command and reports whether the console should stop.
func (c *console) exec(line string) bool {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit", "q":
		return true
	case "next", "n":
		c.next()
	case "status", "st":
		c.status()
	case "window", "w":
		c.window(args)
	case "log":
		c.log()
	case "report":
		c.report()
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
	default:
		intent, err := sim.ParseIntent(name)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return false
		}
		c.submit(intent)
	}
	return false
}

func (c *console) submit(intent sim.Intent) {
	fill, err := c.sess.Submit(intent)
	if err != nil {
		fmt.Fprintf(c.out, "rejected: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, fill.Describe(c.sess.Currency()))
}

func (c *console) next() {
	err := c.sess.AdvanceDay()
	if errors.Is(err, sim.ErrAlreadyAtEnd) {
		fmt.Fprintln(c.out, "already at the last day")
		return
	}
	c.status()
	if c.sess.Done() {
		fmt.Fprintln(c.out, "last day reached")
		c.report()
	}
}

func (c *console) status() {
	cur := c.sess.Currency()
	bar := c.sess.CurrentBar()
	p := c.sess.Portfolio()

	fmt.Fprintf(c.out, "Day %d/%d  %s  close %s\n",
		c.sess.Day()+1, c.sess.Series().Len(), bar.Day(), market.FormatCash(bar.Close, cur))
	fmt.Fprintf(c.out, "Cash %s  Shares %d  Value %s\n",
		market.FormatCash(p.Cash, cur), p.Shares, market.FormatCash(p.Valuation, cur))
	if p.HasBasis {
		fmt.Fprintf(c.out, "Cost/share %s  Profit %s\n",
			market.FormatCash(p.CostBasis, cur), market.FormatCash(p.UnrealizedPL, cur))
	}
}

func (c *console) window(args []string) {
	width := c.opts.Window
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(c.out, "error: bad window size %q\n", args[0])
			return
		}
		width = n
	}
	if width == 0 {
		width = c.sess.Day() + 1
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "date\topen\thigh\tlow\tclose\tvolume\t")
	for _, b := range c.sess.VisibleWindow(width) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t\n",
			b.Day(), b.Open.StringFixed(2), b.High.StringFixed(2),
			b.Low.StringFixed(2), b.Close.StringFixed(2), b.Volume)
	}
	tw.Flush()
}

func (c *console) log() {
	lines := c.sess.ActivityLines()
	if len(lines) == 0 {
		fmt.Fprintln(c.out, "no activity yet")
		return
	}
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}

func (c *console) report() {
	sim.PrintReport(c.out, c.sess.FinalReport(), c.sess.Series().Instrument(), c.sess.Currency())
}
