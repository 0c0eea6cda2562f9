package testplan

import (
	"io"
	"os"
	"path/filepath"

	"github.com/distboot/distboot/internal/models"
)

// Enumerate emits the full suite plan to w. The sequence is fixed by
// source order; the only variation comes from the feature gates, so
// the same config header always produces the same stream.
func Enumerate(config *models.TestPlanConfig, feats *Features, w io.Writer) error {
	p := NewPlan(config, w)

	p.PlanSuite("none", "dirsrv.tests.source")
	if feats.HasManpages() {
		p.PlanSuite("none", "dirsrv.tests.docs")
	}

	// the scenario runner is an optional extension; degrade to a
	// skip record instead of failing the whole plan
	if scenarioRunnerAvailable(config) {
		p.PlanSuite("none", "scenarios.tests.suite")
	} else {
		p.Skip("scenarios", "scenario runner not available")
	}

	p.PlanSuite("none", "dirsrv.tests.blackbox.dump")
	p.PlanSuite("none", "dirsrv.tests.blackbox.check_output")
	p.PlanSuite("none", "dirsrv.tests.credentials")
	p.PlanSuite("none", "dirsrv.tests.registry")
	p.PlanSuite("dc:local", "dirsrv.tests.auth")
	p.PlanSuite("none", "dirsrv.tests.get_opt")
	p.PlanSuite("none", "dirsrv.tests.security")
	p.PlanSuite("none", "dirsrv.tests.rpc.misc")
	p.PlanSuite("none", "dirsrv.tests.rpc.integer")
	p.PlanSuite("none", "dirsrv.tests.param")
	p.PlanSuite("none", "dirsrv.tests.upgrade")
	p.PlanSuite("none", "dirsrv.tests.core")
	p.PlanSuite("none", "dirsrv.tests.common")
	p.PlanSuite("none", "dirsrv.tests.provision")
	p.PlanSuite("none", "dirsrv.tests.password_quality")
	p.PlanSuite("none", "dirsrv.tests.strings")
	p.PlanSuite("none", "dirsrv.tests.netcmd")
	p.PlanSuite("none", "dirsrv.tests.hostconfig")
	p.PlanSuite("dc:local", "dirsrv.tests.messaging")
	p.PlanSuite("none", "dirsrv.tests.registry_backend")
	p.PlanSuite("none", "dirsrv.tests.idmap_backend")

	// database checks against provision snapshots from old releases
	oldReleases := []string{
		"alpha3",
		"release-1-0-0",
		"release-1-1-0rc3",
		"release-1-1-6-partial-object",
		"release-1-5-0-pre1",
	}
	for _, release := range oldReleases {
		p.PlanCommand(
			"dirsrv.blackbox.dbcheck."+release, "none",
			p.BlackboxCmdline("dbcheck-oldrelease.sh", "$PREFIX_ABS/provision", release))

		// same test but skip member link checks
		p.PlanCommand(
			"dirsrv.blackbox.dbcheck."+release+".quick", "none",
			p.BlackboxCmdline("dbcheck-oldrelease.sh", "$PREFIX_ABS/provision", release,
				"--quick-membership-checks"))
	}

	for _, release := range []string{"alpha3", "release-1-0-0"} {
		p.PlanCommand(
			"dirsrv.blackbox.upgradeprovision."+release, "none",
			p.BlackboxCmdline("upgradeprovision-oldrelease.sh", "$PREFIX_ABS/provision", release))
	}

	p.PlanCommand(
		"dirsrv.blackbox.tombstones-expunge.release-1-5-0-pre1", "none",
		p.BlackboxCmdline("tombstones-expunge.sh", "$PREFIX_ABS/provision", "release-1-5-0-pre1"))
	p.PlanCommand(
		"dirsrv.blackbox.dbcheck-links.release-1-5-0-pre1", "none",
		p.BlackboxCmdline("dbcheck-links.sh", "$PREFIX_ABS/provision", "release-1-5-0-pre1"))
	p.PlanCommand(
		"dirsrv.blackbox.runtime-links.release-1-5-0-pre1", "none",
		p.BlackboxCmdline("runtime-links.sh", "$PREFIX_ABS/provision", "release-1-5-0-pre1"))
	p.PlanCommand(
		"dirsrv.blackbox.schemaupgrade", "none",
		p.BlackboxCmdline("schemaupgrade.sh", "$PREFIX_ABS/provision"))
	p.PlanCommand(
		"dirsrv.blackbox.functionalprep", "none",
		p.BlackboxCmdline("functionalprep.sh", "$PREFIX_ABS/provision"))

	p.PlanSuite("none", "dirsrv.tests.upgradeprovision")
	p.PlanSuite("none", "dirsrv.tests.xattr")
	p.PlanSuite("none", "dirsrv.tests.acls")
	p.PlanSuite("none", "dirsrv.tests.policy")
	p.PlanSuite("none", "dirsrv.tests.topology.graph")
	p.PlanSuite("none", "dirsrv.tests.topology.graph_utils")
	p.PlanSuite("none", "dirsrv.tests.topology.ldif_import_export")
	p.PlanSuite("none", "dirsrv.tests.glue")
	p.PlanSuite("none", "dirsrv.tests.db_util")

	if feats.WithPAM() {
		if err := planPAMSuites(p, feats); err != nil {
			return err
		}
	}

	planUnitTests(p)

	return p.Err()
}

// planPAMSuites plans the PAM authentication suites. The wrapper
// library paths are required once PAM is enabled; a build that
// defines WITH_PAM without them is broken, so that is fatal.
func planPAMSuites(p *Plan, feats *Features) error {
	pamWrapper, err := feats.Value("LIBPAM_WRAPPER_SO_PATH")
	if err != nil {
		return &models.GenError{Type: models.ErrTestPlan, Subject: "pam", Err: err}
	}
	pamSetItems, err := feats.Value("PAM_SET_ITEMS_SO_PATH")
	if err != nil {
		return &models.GenError{Type: models.ErrTestPlan, Subject: "pam", Err: err}
	}

	script := func(name string) string {
		return filepath.Join(p.config.SrcDir, "tests", "scripts", name)
	}

	p.PlanCommand("dirsrv.tests.pam_auth(local)", "member",
		[]string{script("test_pam_auth.sh"), pamWrapper,
			"$SERVER", "$USERNAME", "$PASSWORD"})
	p.PlanCommand("dirsrv.tests.pam_auth(domain)", "member",
		[]string{script("test_pam_auth.sh"), pamWrapper,
			"$DOMAIN", "$DC_USERNAME", "$DC_PASSWORD"})

	for _, pamOptions := range []string{"''", "use_authtok", "try_authtok"} {
		p.PlanCommand("dirsrv.tests.pam_chauthtok with options "+pamOptions, "member",
			[]string{script("test_pam_chauthtok.sh"), pamWrapper, pamSetItems,
				"$DOMAIN", "TestPamOptionsUser", "oldp@ssword0", "newp@ssword0",
				pamOptions, "yes",
				"$DC_SERVER", "$DC_USERNAME", "$DC_PASSWORD"})
	}

	p.PlanCommand("dirsrv.tests.pam_warn_pwd_expire(domain)", "member",
		[]string{script("test_pam_warn_pwd_expire.sh"), pamWrapper,
			"$DOMAIN", "alice", "Secret007"})

	return nil
}

// planUnitTests plans the compiled unit-test binaries; these run
// unconditionally at the end of the stream
func planUnitTests(p *Plan) {
	unit := func(rel string) []string {
		return []string{filepath.Join(p.config.BinDir, "default", rel)}
	}

	p.PlanCommand("dirsrv.unittests.krb5auth", "none", unit("testsuite/unittests/test_krb5auth"))
	p.PlanCommand("dirsrv.unittests.srv_pipe", "none", unit("testsuite/unittests/test_srv_pipe"))
	p.PlanCommand("dirsrv.unittests.util_modules", "none", unit("testsuite/unittests/test_util_modules"))
	p.PlanCommand("dirsrv.unittests.cli_session", "none", unit("libcli/test_cli_session"))
	p.PlanCommand("dirsrv.unittests.tldap", "none", unit("source/test_tldap"))
	p.PlanCommand("dirsrv.unittests.rfc1738", "none", unit("lib/util/test_rfc1738"))
	p.PlanCommand("dirsrv.unittests.kerberos", "none", unit("test_kerberos"))
	p.PlanCommand("dirsrv.unittests.ms_fnmatch", "none", unit("lib/util/test_ms_fnmatch"))
	p.PlanCommand("dirsrv.unittests.ntlm_check", "none", unit("libcli/auth/test_ntlm_check"))
}

// scenarioRunnerAvailable probes for the optional scenario-runner
// extension next to the test binaries
func scenarioRunnerAvailable(config *models.TestPlanConfig) bool {
	_, err := os.Stat(filepath.Join(config.BinDir, "scenario-runner"))
	return err == nil
}
