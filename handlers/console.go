package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mohamedthameursassi/trainroute/services"
	"github.com/mohamedthameursassi/trainroute/utils"
)

const (
	welcomeMessage = "Welcome.\n" +
		"Please put the origin and destination station in the format 'A B' without the quotation marks."
	inputPrompt  = "Input> "
	usageMessage = "The input expected is two names of stations separated by space. (i.e. A B)"
)

// ErrNetworkNotSetUp is returned by Run when the session refuses to start.
var ErrNetworkNotSetUp = errors.New("the train network is not set up")

// ConsoleSession is the interactive query loop: one "A B" pair per line
// until "exit" or the end of input.
type ConsoleSession struct {
	service *services.RoutingService
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger
}

func NewConsoleSession(service *services.RoutingService, in io.Reader, out io.Writer, logger *slog.Logger) *ConsoleSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleSession{
		service: service,
		in:      in,
		out:     out,
		logger:  logger,
	}
}

func (s *ConsoleSession) Run(ctx context.Context) error {
	if err := s.service.CheckNetwork(); err != nil {
		switch {
		case errors.Is(err, services.ErrNetworkNotLoaded):
			s.println("There is no train network registered.\nSomething went wrong.")
		default:
			s.println("There are no stations registered.\nCheck input file.")
		}
		s.println("The train network is not set up. Exiting...")
		return fmt.Errorf("%w: %v", ErrNetworkNotSetUp, err)
	}

	s.println(welcomeMessage)

	// A Reader rather than a Scanner: input lines have no length limit.
	reader := bufio.NewReader(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, inputPrompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			s.logger.Warn("reading console input failed", "error", err)
			return err
		}
		if err != nil && line == "" {
			s.println("")
			return nil
		}

		if utils.IsExitCommand(line) {
			return nil
		}
		s.processLine(ctx, line)
	}
}

func (s *ConsoleSession) processLine(ctx context.Context, line string) {
	origin, destination, ok := utils.ParseStationPair(line)
	if !ok {
		s.println(usageMessage)
		return
	}

	result, err := s.service.TripDuration(ctx, origin, destination)
	switch {
	case errors.Is(err, services.ErrStationNotFound):
		s.println(fmt.Sprintf("The specified route doesn't exist. [%s, %s]", origin, destination))
		return
	case err != nil:
		s.logger.Warn("trip query failed, continuing with the next user input", "error", err)
		return
	}

	if !result.Reachable {
		s.println(fmt.Sprintf("There is no route between %s and %s", result.Origin, result.Destination))
		return
	}
	s.println(fmt.Sprintf("%s to %s takes %s minutes.", result.Origin, result.Destination, utils.FormatDuration(result.Duration)))
}

func (s *ConsoleSession) println(msg string) {
	fmt.Fprintln(s.out, msg)
}
