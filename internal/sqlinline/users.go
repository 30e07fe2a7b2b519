package sqlinline

const QListInterns = `--sql 112fd531-7b8e-4689-9882-554a29089df4
select id::text, email, full_name, coalesce(phone, ''), coalesce(mentor, ''),
       fundraising_goal::text, current_amount::text, created_at, updated_at
from users
where role = 'intern'
order by created_at asc, id asc;
`

const QSelectInternByID = `--sql 06f8bb5a-971d-4d2d-b73e-e8ee730ad70c
select id::text, email, full_name, coalesce(phone, ''), coalesce(mentor, ''),
       fundraising_goal::text, current_amount::text, created_at, updated_at
from users
where id = $1::uuid and role = 'intern';
`

const QSelectAuthUser = `--sql bc8a7e1e-0e78-494e-875f-ae49f38524a0
select id::text, email, full_name, role
from users
where id = $1::uuid;
`

const QInsertProfile = `--sql f46e9440-cd39-4d2c-b163-901387e52012
insert into users(id, email, full_name, role, fundraising_goal, current_amount, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::numeric, 0, now(), now())
on conflict (id) do nothing;
`

const QUpdateInternProfile = `--sql c5c72f23-2ad4-4926-91cd-0acbe932d768
update users
set fundraising_goal = $2::numeric,
    mentor = nullif($3::text, ''),
    updated_at = now()
where id = $1::uuid and role = 'intern';
`
