package main

import (
	"fmt"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

// program adapts runApp to the system service manager.
type program struct {
	cfgPath string
	errCh   chan error
}

// Start implements service.Interface. The service manager expects Start to
// return promptly, so the app runs in its own goroutine.
func (p *program) Start(_ service.Service) error {
	p.errCh = make(chan error, 1)
	go func() {
		p.errCh <- runApp(p.cfgPath)
	}()
	return nil
}

// Stop implements service.Interface. The app shuts down on SIGTERM from
// the service manager; nothing extra to do here.
func (p *program) Stop(_ service.Service) error {
	return nil
}

func newService(cfgPath string) (service.Service, *program, error) {
	prg := &program{cfgPath: cfgPath}
	svc, err := service.New(prg, &service.Config{
		Name:        "axtarchat",
		DisplayName: "axtarchat",
		Description: "Azerbaijani chat assistant backend",
		Arguments:   serviceArguments(cfgPath),
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, prg, nil
}

func serviceArguments(cfgPath string) []string {
	args := []string{"service", "run"}
	if cfgPath != "" {
		args = append(args, "--config", cfgPath)
	}
	return args
}

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Run or manage axtarchat as a system service",
	}
	cmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run under the service manager (used by install)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			svc, prg, err := newService(cfgPath)
			if err != nil {
				return err
			}
			if err := svc.Run(); err != nil {
				return err
			}
			select {
			case err := <-prg.errCh:
				return err
			default:
				return nil
			}
		},
	}

	control := func(use, short, action string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfgPath, _ := cmd.Flags().GetString("config")
				svc, _, err := newService(cfgPath)
				if err != nil {
					return err
				}
				if err := service.Control(svc, action); err != nil {
					return err
				}
				fmt.Printf("service %s: done\n", action)
				return nil
			},
		}
	}

	cmd.AddCommand(
		run,
		control("install", "Install the system service", "install"),
		control("uninstall", "Remove the system service", "uninstall"),
		control("start", "Start the installed service", "start"),
		control("stop", "Stop the installed service", "stop"),
	)
	return cmd
}
