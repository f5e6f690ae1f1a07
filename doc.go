// Package propflow resolves layered project properties for a build host.
//
// A resolution merges, from lowest to highest precedence:
//
//   - gradle.properties and gradle-<env>.properties of every project from
//     the root down to the resolved project
//   - gradle.properties and gradle-<user>.properties in the user home
//   - ORG_GRADLE_PROJECT_ environment variables
//   - org.gradle.project. system properties
//   - command-line overrides
//
// The result is written back into the project's properties, and a filter
// token map is published on the project under FilterTokensKey for use by
// file-filtering tools.
//
// # Quick Start
//
//	plugin, err := propflow.New(propflow.WithOverrides(map[string]string{"env": "qa"}))
//	if err != nil {
//	    return err
//	}
//
//	root := project.NewNode("app", "/src/app", nil)
//	res, err := plugin.ApplyProject(ctx, root)
//
//	plugin.Validator().RequireProperty("deploy", "deployHost")
//	// once the execution plan is known
//	err = plugin.Validator().Validate(ctx, root.Lookup, []string{"deploy"})
//
// The subpackages hold the pieces:
//
//   - config: meta names, source lists, the layer merger and export
//   - token: filter token projection
//   - project: the host's project tree
//   - sysprop: the process-wide system property store
//   - validate: deferred required/recommended property checks
//   - errors: the error taxonomy and user-facing messages
//   - notify: resolution event sinks
package propflow
