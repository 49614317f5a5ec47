package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/adminkit/guard/pkg/authorization"
	"github.com/adminkit/guard/pkg/logging"
	"github.com/adminkit/guard/pkg/policy"
	"github.com/adminkit/guard/pkg/roles"
)

var (
	version = "dev" // Will be set during build

	cfgFile     string
	policyFile  string
	showVersion bool

	principalRoles     []string
	principalOverrides []string
	grantingRole       string
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "guardctl",
	Short:         "Inspect and evaluate guard authorization policy",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `guardctl - offline inspection of guard authorization policy

Evaluates role and permission decisions against a policy file exactly the
way the engine does at runtime, so operators can answer "would principal P
be granted X" without deploying a change.

The policy file is YAML:

    roles:
      admin:
        inherits: [editor]
        permissions:
          - "entity:**"
          - "roles:assign"
      editor:
        permissions:
          - "entity:*:read"
          - "entity:*:update"

An optional JSON config file (comments allowed) supplies defaults:
{
    "policy_path": "/etc/guard/policy.yaml",
    "app_log_path": "/var/log/guard/guardctl.log",
    "audit_log_path": "/var/log/guard/audit.log",
    "log_level": "info"
}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("guardctl %s\n", version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&policyFile, "policy", "p", "", "path to policy file (overrides config)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version information")

	checkCmd.Flags().StringArrayVarP(&principalRoles, "role", "r", nil, "role assigned to the principal (repeatable)")
	checkCmd.Flags().StringArrayVar(&principalOverrides, "override", nil, "permission override granted to the principal (repeatable)")
	permissionsCmd.Flags().StringArrayVarP(&principalRoles, "role", "r", nil, "role assigned to the principal (repeatable)")
	permissionsCmd.Flags().StringArrayVar(&principalOverrides, "override", nil, "permission override granted to the principal (repeatable)")
	rolesCmd.Flags().StringVar(&grantingRole, "granting", "", "list only roles whose closure grants this role")

	rootCmd.AddCommand(validateCmd, checkCmd, permissionsCmd, rolesCmd)
}

// resolvePolicyPath combines the --policy flag with the optional config
// file and initializes logging from the config.
func resolvePolicyPath() (string, error) {
	var config Config
	if cfgFile != "" {
		if err := LoadConfig(cfgFile, &config); err != nil {
			return "", fmt.Errorf("failed to load config: %w", err)
		}
		if err := logging.Initialize(config.AuditLogPath, config.AppLogPath, logging.LogLevel(config.LogLevel)); err != nil {
			return "", fmt.Errorf("failed to initialize logging: %w", err)
		}
	}

	path := policyFile
	if path == "" {
		path = config.PolicyPath
	}
	if path == "" {
		return "", fmt.Errorf("policy file is required (use --policy or a config file)")
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = abs
	}
	return path, nil
}

func loadSource() (*policy.ReloadingSource, error) {
	path, err := resolvePolicyPath()
	if err != nil {
		return nil, err
	}
	source, err := policy.NewReloadingSource(policy.NewFileSource(afero.NewOsFs(), path))
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}
	return source, nil
}

func checkerFor(source policy.Source) *authorization.Checker {
	principal := &authorization.Principal{
		ID:        "guardctl",
		Roles:     principalRoles,
		Overrides: principalOverrides,
	}
	return authorization.NewChecker(source, func() *authorization.Principal {
		return principal
	})
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the policy file",
	Long: `Validate parses the policy file, checks every permission pattern and
verifies the role hierarchy is acyclic. Exits non-zero on any problem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePolicyPath()
		if err != nil {
			return err
		}

		snapshot, err := policy.NewFileSource(afero.NewOsFs(), path).Load()
		if err != nil {
			return err
		}
		if !roles.NewGraph(snapshot.Hierarchy).Validate() {
			return fmt.Errorf("policy %s: role hierarchy contains a cycle", path)
		}

		fmt.Printf("policy OK: %d roles\n", len(snapshot.RoleNames()))
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <attribute>",
	Short: "Evaluate a decision for an ad-hoc principal",
	Long: `Check evaluates whether a principal holding the given roles and
overrides would be granted the attribute. The attribute is a bare role
name, a role:-prefixed role, or a colon-separated permission string.
Exits 0 when granted, 1 when denied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := loadSource()
		if err != nil {
			return err
		}

		if checkerFor(source).IsGranted(args[0], nil) {
			fmt.Println("GRANTED")
			return nil
		}
		fmt.Println("DENIED")
		os.Exit(1)
		return nil
	},
}

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Print the effective permission set for the given roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := loadSource()
		if err != nil {
			return err
		}

		checker := checkerFor(source)
		for _, pattern := range checker.UserPermissions(checker.CurrentPrincipal()) {
			fmt.Println(pattern)
		}
		return nil
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List known roles, or the roles granting a given role",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := loadSource()
		if err != nil {
			return err
		}

		names := source.Roles()
		if grantingRole != "" {
			names = roles.NewGraph(source.Hierarchy()).RolesGranting(grantingRole)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
