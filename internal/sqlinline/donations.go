package sqlinline

const QListDonations = `--sql daf0a42d-d40c-4c80-89ba-36fb87aef749
select id::text, intern_id::text, donor_name, amount::text, payment_method, donation_date,
       coalesce(notes, ''), created_at
from donations
order by created_at desc;
`

const QListDonationsByIntern = `--sql 3ed24dca-be6c-4608-ac32-704014a9bcc6
select id::text, intern_id::text, donor_name, amount::text, payment_method, donation_date,
       coalesce(notes, ''), created_at
from donations
where intern_id = $1::uuid
order by created_at desc;
`

// QRecordDonation inserts the donation and increments the intern's running
// total in one statement. Nothing is written when $1 is not an intern.
const QRecordDonation = `--sql e56094d8-a12a-4ec7-80b2-43ef14772509
with target as (
  select id from users where id = $1::uuid and role = 'intern' for update
), inserted as (
  insert into donations(intern_id, donor_name, amount, payment_method, donation_date, notes, created_at)
  select t.id, $2::text, $3::numeric, $4::text, $5::date, nullif($6::text, ''), now()
  from target t
  returning id, intern_id, amount, created_at
), bumped as (
  update users u
  set current_amount = u.current_amount + i.amount, updated_at = now()
  from inserted i
  where u.id = i.intern_id
  returning u.id
)
select i.id::text, i.created_at
from inserted i
join bumped b on b.id = i.intern_id;
`
