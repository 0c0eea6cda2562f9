package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/distboot/distboot/internal/models"
)

// The artifact templates are fixed. They are parsed once at package
// init and executed with missingkey=error, so a stale placeholder
// fails loudly instead of rendering a half-filled script.

const aptBootstrapText = `#!/bin/bash
set -xueo pipefail

export DEBIAN_FRONTEND=noninteractive
apt-get -y update

apt-get -y install \
    {{.Pkgs}}

apt-get -y autoremove
apt-get -y autoclean
apt-get -y clean

# uncomment locale
# this file doesn't exist on ubuntu1404 even with locales installed
if [ -f /etc/locale.gen ]; then
    sed -i '/^#\s*en_US.UTF-8 UTF-8/s/^#\s*//' /etc/locale.gen
fi

locale-gen

# update /etc/default/locale
update-locale LC_ALL=en_US.UTF-8 LANG=en_US.UTF-8

# set both for safe
echo LC_ALL="en_US.UTF-8" >> /etc/environment
echo LANG="en_US.UTF-8" >> /etc/environment
`

const yumBootstrapText = `#!/bin/bash
set -xueo pipefail

yum -y -q update
yum -y -q install epel-release
yum -y -q update

yum -y -q --verbose install \
    {{.Pkgs}}

yum clean all

# gen locale
localedef -c -i en_US -f UTF-8 en_US.UTF-8

# no update-locale, diy
# LC_ALL is not valid in this file
echo LANG="en_US.UTF-8" > /etc/locale.conf

# set both for safe
echo LC_ALL="en_US.UTF-8" >> /etc/environment
echo LANG="en_US.UTF-8" >> /etc/environment
`

const dnfBootstrapText = `#!/bin/bash
set -xueo pipefail

dnf -y -q update

dnf -y -q --verbose install \
    {{.Pkgs}}

dnf clean all

# gen locale
localedef -c -i en_US -f UTF-8 en_US.UTF-8

# no update-locale, diy
# LC_ALL is not valid in this file
echo LANG="en_US.UTF-8" > /etc/locale.conf

# set both for safe
echo LC_ALL="en_US.UTF-8" >> /etc/environment
echo LANG="en_US.UTF-8" >> /etc/environment
`

const dockerfileText = `FROM {{.DockerImage}}

# this image runs ci, these ENV vars are important
ENV CC="ccache gcc"

ADD bootstrap.sh /tmp/bootstrap.sh
# needs root permission, do it before USER ci
RUN bash /tmp/bootstrap.sh

# the test suite can not run as root, so we have to create a new user
RUN useradd -m -s /bin/bash ci && \
    mkdir -p /etc/sudoers.d && \
    echo "ci ALL=(ALL) NOPASSWD:ALL" > /etc/sudoers.d/ci

USER ci
WORKDIR /home/ci
# the tests rely on this
ENV USER=ci LC_ALL=en_US.UTF-8 LANG=en_US.UTF-8
`

// keep the indent and surrounding blank lines, snippets are pasted
// verbatim into the global Vagrantfile
const vagrantSnippetText = `
    config.vm.define "{{.Name}}" do |v|
        v.vm.box = "{{.VagrantBox}}"
        v.vm.hostname = "{{.Name}}"
        v.vm.provision :shell, path: "{{.Name}}/bootstrap.sh"
    end
`

const vagrantGlobalText = `
Vagrant.configure("2") do |config|
    config.ssh.insert_key = false

{{.Snippets}}
end
`

// BootstrapContext is the substitution context for bootstrap scripts
type BootstrapContext struct {
	// Pkgs is the resolved package list formatted as shell
	// line-continuations
	Pkgs string
}

// DockerfileContext is the substitution context for Dockerfiles
type DockerfileContext struct {
	DockerImage string
}

// VagrantSnippetContext is the substitution context for one dist's
// Vagrantfile block
type VagrantSnippetContext struct {
	Name       string
	VagrantBox string
}

// VagrantGlobalContext is the substitution context for the aggregated
// Vagrantfile
type VagrantGlobalContext struct {
	Snippets string
}

var (
	aptBootstrapTmpl   = mustTemplate("apt-bootstrap", aptBootstrapText)
	yumBootstrapTmpl   = mustTemplate("yum-bootstrap", yumBootstrapText)
	dnfBootstrapTmpl   = mustTemplate("dnf-bootstrap", dnfBootstrapText)
	dockerfileTmpl     = mustTemplate("dockerfile", dockerfileText)
	vagrantSnippetTmpl = mustTemplate("vagrant-snippet", vagrantSnippetText)
	vagrantGlobalTmpl  = mustTemplate("vagrantfile", vagrantGlobalText)
)

func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Parse(text))
}

func execute(tmpl *template.Template, ctx interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("template %s: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// RenderBootstrap renders the install script for the given package
// manager over the resolved package list
func RenderBootstrap(manager models.PackageManager, packages []string) ([]byte, error) {
	var tmpl *template.Template
	switch manager {
	case models.ManagerApt:
		tmpl = aptBootstrapTmpl
	case models.ManagerYum:
		tmpl = yumBootstrapTmpl
	case models.ManagerDnf:
		tmpl = dnfBootstrapTmpl
	default:
		return nil, fmt.Errorf("no bootstrap template for package manager %q", manager)
	}

	ctx := BootstrapContext{Pkgs: strings.Join(packages, " \\\n    ")}
	return execute(tmpl, ctx)
}

// RenderDockerfile renders the container build file for one dist
func RenderDockerfile(dist models.Distro) ([]byte, error) {
	return execute(dockerfileTmpl, DockerfileContext{DockerImage: dist.DockerImage})
}

// RenderVagrantSnippet renders one dist's block of the global
// Vagrantfile
func RenderVagrantSnippet(dist models.Distro) ([]byte, error) {
	return execute(vagrantSnippetTmpl, VagrantSnippetContext{
		Name:       dist.Name,
		VagrantBox: dist.VagrantBox,
	})
}

// RenderVagrantfile renders the aggregated Vagrantfile from per-dist
// snippets. Callers pass snippets already ordered by dist name; one
// Vagrantfile drives the whole fleet, e.g. "vagrant up" for all dists
// or "vagrant up ubuntu1804" for one.
func RenderVagrantfile(snippets [][]byte) ([]byte, error) {
	joined := bytes.Join(snippets, nil)
	out, err := execute(vagrantGlobalTmpl, VagrantGlobalContext{Snippets: string(joined)})
	if err != nil {
		return nil, err
	}
	return bytes.TrimLeft(out, "\n"), nil
}
