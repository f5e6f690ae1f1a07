// Package config resolves layered project properties.
//
// Properties are merged from a fixed sequence of layers, later layers
// overriding earlier ones:
//  1. gradle.properties and gradle-<env>.properties of every project from the
//     root down to the resolved project
//  2. gradle.properties and gradle-<user>.properties in the user home
//  3. Environment variables prefixed with ORG_GRADLE_PROJECT_
//  4. System properties prefixed with org.gradle.project.
//  5. Command-line overrides
//
// Every resolved key is also published in a filter token map under its own
// name and, for camelCase names, under a dotted spelling (see package token).
//
// # Basic Usage
//
//	meta := config.ResolveMetaNames(node.Lookup)
//	descriptors, err := config.BuildSourceList(fsys, node, meta, userHome)
//	if err != nil {
//	    return err
//	}
//	resolver := config.NewResolver(config.ResolverConfig{
//	    Fs:        fsys,
//	    Overrides: map[string]string{"version": "1.2.0"},
//	})
//	result, err := resolver.Resolve(ctx, descriptors, meta)
//	fmt.Println(result.Namespace.Get("version"))    // "1.2.0"
//	fmt.Println(result.Namespace.Source("version")) // "command-line"
//
// # Environment Files
//
// The environment name comes from the environmentName property and defaults
// to "local". When a non-default environment is requested, at least one
// gradle-<env>.properties must exist somewhere in the hierarchy.
//
// # Meta-Name Properties
//
// The names of the environment, user and environment-directory properties are
// themselves configurable through propertiesPluginEnvironmentNameProperty,
// propertiesPluginGradleUserNameProperty and
// propertiesPluginEnvironmentFileDirProperty. None of these six properties may
// be changed by a property file once established.
package config
